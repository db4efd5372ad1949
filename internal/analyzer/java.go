package analyzer

const javaDefaultPort = 8080

func analyzeJava(root string, p *Profile) {
	p.Language = LangJava
	p.Port = javaDefaultPort

	switch {
	case fileExists(root, "pom.xml"):
		p.Framework = "maven"
		p.BuildCommands = []string{"mvn clean install"}
		p.StartCommands = []string{"java -jar target/*.jar"}
	case fileExists(root, "build.gradle"):
		p.Framework = "gradle"
		p.BuildCommands = []string{"./gradlew build"}
		p.StartCommands = []string{"java -jar build/libs/*.jar"}
	}
	// A gradle.properties-only tree still classifies as java; build tool
	// stays undetermined.
}

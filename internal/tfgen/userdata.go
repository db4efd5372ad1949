package tfgen

import (
	"strings"

	"github.com/arvoai/arvo/internal/analyzer"
)

// installBlock is the dependency-installation part of the bootstrap script,
// selected by language alone.
func installBlock(language string) string {
	switch language {
	case analyzer.LangPython:
		return `# Install Python
yum install -y python3 python3-pip
pip3 install --upgrade pip

# Install application dependencies
if [ -f requirements.txt ]; then
    pip3 install -r requirements.txt
fi
if [ -f app/requirements.txt ]; then
    pip3 install -r app/requirements.txt
fi`
	case analyzer.LangNodeJS:
		return `# Install Node.js
curl -fsSL https://rpm.nodesource.com/setup_18.x | bash -
yum install -y nodejs

# Install application dependencies
if [ -f package.json ]; then
    npm install
fi`
	case analyzer.LangJava:
		return `# Install Java
yum install -y java-11-openjdk

# Install Maven
yum install -y maven`
	default:
		return "# Default setup"
	}
}

// appHomeDir is where the bootstrap script expects the application checkout.
const appHomeDir = "/home/ec2-user"

// startBlock launches the application in the background from a fixed working
// directory. Commands are chained so a build step can precede the server.
func startBlock(p *analyzer.Profile) string {
	if len(p.StartCommands) == 0 {
		return "# No start commands defined"
	}
	return "# Start application\ncd " + appHomeDir + "\n" + strings.Join(p.StartCommands, " && ") + " &"
}

// bootstrapScript is the full user-data body shared by both providers apart
// from the package-manager preamble.
func bootstrapScript(p *analyzer.Profile, preamble string) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString(preamble)
	b.WriteString("\n\n")
	b.WriteString(installBlock(p.Language))
	b.WriteString("\n\n")
	b.WriteString(startBlock(p))
	b.WriteString("\n")
	return b.String()
}

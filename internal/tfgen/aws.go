package tfgen

import (
	"fmt"
	"strings"

	"github.com/arvoai/arvo/internal/analyzer"
)

func awsMain(p *analyzer.Profile) string {
	return fmt.Sprintf(`terraform {
  required_providers {
    aws = {
      source  = "hashicorp/aws"
      version = "~> 5.0"
    }
  }
}

provider "aws" {
  region = var.aws_region
}

# Security Group
resource "aws_security_group" "app_sg" {
  name        = "app-security-group"
  description = "Security group for application"

  ingress {
    from_port   = %[1]d
    to_port     = %[1]d
    protocol    = "tcp"
    cidr_blocks = ["0.0.0.0/0"]
  }

  ingress {
    from_port   = 22
    to_port     = 22
    protocol    = "tcp"
    cidr_blocks = ["0.0.0.0/0"]
  }

  egress {
    from_port   = 0
    to_port     = 0
    protocol    = "-1"
    cidr_blocks = ["0.0.0.0/0"]
  }
}

# EC2 Instance
resource "aws_instance" "app_server" {
  ami           = var.ami_id
  instance_type = var.instance_type
  key_name      = var.key_name

  security_groups = [aws_security_group.app_sg.name]

  user_data = <<-EOF
%s  EOF

  tags = {
    Name = "arvo-app-server"
  }
}

# Elastic IP
resource "aws_eip" "app_eip" {
  instance = aws_instance.app_server.id
  domain   = "vpc"
}
`, port(p), indent(bootstrapScript(p, awsPreamble), "    "))
}

const awsPreamble = `yum update -y
yum install -y git docker
systemctl start docker
systemctl enable docker`

const awsVariables = `variable "aws_region" {
  description = "AWS region"
  type        = string
  default     = "us-east-1"
}

variable "ami_id" {
  description = "AMI ID for the instance"
  type        = string
  default     = "ami-0c55b159cbfafe1f0"
}

variable "instance_type" {
  description = "Instance type"
  type        = string
  default     = "t2.micro"
}

variable "key_name" {
  description = "Name of the key pair"
  type        = string
  default     = "arvo-key"
}
`

const awsOutputs = `output "public_ip" {
  description = "Public IP of the instance"
  value       = aws_eip.app_eip.public_ip
}

output "instance_id" {
  description = "Instance ID"
  value       = aws_instance.app_server.id
}
`

// port falls back to 80 so the ingress rule is always valid even for an
// unknown-language profile.
func port(p *analyzer.Profile) int {
	if p.Port > 0 {
		return p.Port
	}
	return 80
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

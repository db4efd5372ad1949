package tfgen

import (
	"fmt"

	"github.com/arvoai/arvo/internal/analyzer"
)

func gcpMain(p *analyzer.Profile) string {
	return fmt.Sprintf(`terraform {
  required_providers {
    google = {
      source  = "hashicorp/google"
      version = "~> 4.0"
    }
  }
}

provider "google" {
  project = var.gcp_project
  region  = var.gcp_region
}

# Compute Instance
resource "google_compute_instance" "app_server" {
  name         = "arvo-app-server"
  machine_type = var.machine_type
  zone         = var.gcp_zone

  boot_disk {
    initialize_params {
      image = var.gcp_image
    }
  }

  network_interface {
    network = "default"
    access_config {
      // Ephemeral public IP
    }
  }

  metadata_startup_script = <<-EOF
%s  EOF
}

# Firewall Rule
resource "google_compute_firewall" "app_firewall" {
  name    = "app-firewall"
  network = "default"

  allow {
    protocol = "tcp"
    ports    = ["%d", "22"]
  }

  source_ranges = ["0.0.0.0/0"]
}
`, indent(bootstrapScript(p, gcpPreamble), "    "), port(p))
}

const gcpPreamble = `apt-get update
apt-get install -y git docker.io
systemctl start docker
systemctl enable docker`

const gcpVariables = `variable "gcp_project" {
  description = "GCP project ID"
  type        = string
}

variable "gcp_region" {
  description = "GCP region"
  type        = string
  default     = "us-central1"
}

variable "gcp_zone" {
  description = "GCP zone"
  type        = string
  default     = "us-central1-a"
}

variable "machine_type" {
  description = "Machine type"
  type        = string
  default     = "e2-micro"
}

variable "gcp_image" {
  description = "GCP image"
  type        = string
  default     = "debian-cloud/debian-11"
}
`

const gcpOutputs = `output "public_ip" {
  description = "Public IP of the instance"
  value       = google_compute_instance.app_server.network_interface[0].access_config[0].nat_ip
}

output "instance_id" {
  description = "Instance ID"
  value       = google_compute_instance.app_server.instance_id
}
`

package main

import "fmt"

var buildVersion = "dev"
var buildCommit = "unknown"

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func versionString() string {
	return fmt.Sprintf("livslogg %s\ncommit %s", buildVersion, buildCommit)
}

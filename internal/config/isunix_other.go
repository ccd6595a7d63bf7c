//go:build !unix

package config

func isUnix() bool { return false }

package main

import (
	"testing"

	"github.com/livslogg/livslogg/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestLogScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/log",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}

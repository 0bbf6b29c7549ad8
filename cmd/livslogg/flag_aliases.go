package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var taskFlagAliases = map[string]string{
	"prio": "priority",
	"cat":  "category",
}

func addTaskFlagAliases(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		setFlagAliases(cmd.Flags(), taskFlagAliases)
	}
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}

// Package flagx lets several flag sets share one command line by filtering
// os.Args down to the flags each set knows about.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args made of allowedFlags and their values.
//
// Both "-f value" and "-f=value" forms are recognised. Flags listed in
// switches are boolean and never consume the following argument, so
// "-prod serve" keeps only "-prod".
func FilterArgs(args []string, allowedFlags []string, switches ...string) []string {
	allowed := make(map[string]bool, len(allowedFlags)+len(switches))
	for _, f := range allowedFlags {
		allowed[f] = false
	}
	for _, f := range switches {
		allowed[f] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		isSwitch, ok := allowed[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if isSwitch {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFile extracts the JSON config path given with -c or -config.
// The last occurrence wins; an empty string means no file was requested.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

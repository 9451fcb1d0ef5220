package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const (
	shortFlagName  = "short"
	unknownVersion = "unknown"
)

// versionInfo is what qmetrics knows about its own build.
type versionInfo struct {
	Version   string
	Module    string
	GoVersion string
	Revision  string
	Dirty     bool
}

// readVersionInfo extracts the module version and VCS stamp from build info.
// A nil info yields an unknown version.
func readVersionInfo(info *debug.BuildInfo) versionInfo {
	if info == nil {
		return versionInfo{Version: unknownVersion}
	}

	v := versionInfo{
		Version:   info.Main.Version,
		Module:    info.Main.Path,
		GoVersion: info.GoVersion,
	}
	if v.Version == "" {
		v.Version = unknownVersion
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.Revision = setting.Value
		case "vcs.modified":
			v.Dirty = setting.Value == "true"
		}
	}

	return v
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the qmetrics build version, module path, VCS revision and the Go version used to build it.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, _ := debug.ReadBuildInfo()
			printVersion(cmd, readVersionInfo(info))
		},
	}

	cmd.Flags().Bool(shortFlagName, false, "print only the version number")

	return cmd
}

func printVersion(cmd *cobra.Command, v versionInfo) {
	if short, _ := cmd.Flags().GetBool(shortFlagName); short || v.Version == unknownVersion {
		cmd.Println(v.Version)
		return
	}

	cmd.Println("qmetrics version\t", v.Version)
	cmd.Println("module\t\t\t", v.Module)

	if v.Revision != "" {
		revision := v.Revision
		if v.Dirty {
			revision += " (modified)"
		}

		cmd.Println("revision\t\t", revision)
	}

	cmd.Println("go version\t\t", v.GoVersion)
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}

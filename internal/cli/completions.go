package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pathkit/internal/scaffold"
)

// completeLayoutNames provides shell completion for example layout names.
func completeLayoutNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	layouts, err := scaffold.ListLayouts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return filterPrefix(layouts, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}

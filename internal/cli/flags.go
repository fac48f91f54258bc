package cli

import "github.com/spf13/cobra"

// resolvePair folds an on/off flag pair into one value. An explicitly given
// negative flag wins over the positive one; when neither was given, the
// default applies.
func resolvePair(cmd *cobra.Command, pos, neg string, def bool) bool {
	if cmd.Flags().Changed(neg) {
		if v, _ := cmd.Flags().GetBool(neg); v {
			return false
		}
	}
	if cmd.Flags().Changed(pos) {
		if v, _ := cmd.Flags().GetBool(pos); v {
			return true
		}
	}
	return def
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// tablesFromConfig reads a table-name list from viper and normalizes it for
// the backup service, which expects lowercase snake_case names.
func tablesFromConfig(key string) []string {
	return normalizeTables(viper.GetStringSlice(key))
}

func normalizeTables(values []string) []string {
	tables := make([]string, 0, len(values))
	for _, value := range values {
		if name := strings.ToLower(strings.TrimSpace(value)); name != "" {
			tables = append(tables, name)
		}
	}
	if len(tables) == 0 {
		return nil
	}
	return tables
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

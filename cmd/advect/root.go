package main

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "advect",
	Short: "Offline runner for the advection models",
	Long: `advect runs the finite-difference advection models from the command
line and writes the result as JSON, either to stdout or to a file.

Defaults can be overridden per model in the config file, for example:

    1d:
      nx: 200
    2d:
      diffusion: 0.002

Flag values win over the case file, which wins over the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.advect.yaml)")
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".advect")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// addRunFlags registers the flags shared by the model subcommands.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("case", "", "YAML case file with saved run parameters")
	cmd.Flags().StringP("out", "o", "", "write the result JSON to this file instead of stdout")
	cmd.Flags().String("cpuprofile", "", "write a CPU profile to this directory")
}

// resolveInt picks an integer parameter: an explicitly set flag wins, then
// the case file, then the config file, then the flag's built-in default.
func resolveInt(cmd *cobra.Command, name string, caseVal *int, viperKey string) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	if caseVal != nil {
		return *caseVal
	}
	if viper.IsSet(viperKey) {
		return viper.GetInt(viperKey)
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

// resolveFloat is resolveInt for float parameters.
func resolveFloat(cmd *cobra.Command, name string, caseVal *float64, viperKey string) float64 {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	if caseVal != nil {
		return *caseVal
	}
	if viper.IsSet(viperKey) {
		return viper.GetFloat64(viperKey)
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return v
}

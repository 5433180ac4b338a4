/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gonastran",
	Short: "Reader for NASTRAN OP2 binary result files",
	Long: `
Reads NASTRAN OP2 result files: displacements, eigenvectors, forces, element
stresses, strains and forces, strain energy and grid point weight output.

gonastran read -F model.op2`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(logConfigFromViper())
		if dir, _ := cmd.Flags().GetString("cpuprofile"); dir != "" {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gonastran.yaml)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile into this directory")
	rootCmd.PersistentFlags().String("logLevel", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("logFile", "", "log to this file, rotated, instead of stderr")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("logLevel"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("logFile"))
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.maxSizeMB", 50)
	viper.SetDefault("log.maxBackups", 3)
	viper.SetDefault("log.maxAgeDays", 28)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".gonastran" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gonastran")
	}

	viper.SetEnvPrefix("GONASTRAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

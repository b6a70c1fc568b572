// Copyright 2026 The podfs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fairdatasociety/podfs/cfg"
	"github.com/fairdatasociety/podfs/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootOptions carries the state shared by the root command and its
// subcommands.
type rootOptions struct {
	v          *viper.Viper
	configFile string
	config     cfg.Config
}

// NewRootCmd returns the podfs command tree, writing command output to out.
func NewRootCmd(out io.Writer) (*cobra.Command, error) {
	o := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "podfs",
		Short: "Read and write files stored in content-addressed pods",
		Long: `podfs gives access to the files of a pod: a named, hierarchical
collection of files whose content is stored once per distinct value and
addressed by its hash. Files are rewritten through a write stream that
collects positioned writes, seeks and truncations and uploads the result in
one piece.`,
		Version:       fmt.Sprintf("%s (Go version %s)", common.GetVersion(), runtime.Version()),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.loadConfig()
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&o.configFile, "config-file", "", "Path to a YAML config file. Flags override its values.")
	if err := cfg.BindFlags(o.v, rootCmd.PersistentFlags()); err != nil {
		return nil, fmt.Errorf("error while binding flags: %w", err)
	}

	rootCmd.AddCommand(
		newLsCmd(o),
		newCatCmd(o),
		newPutCmd(o),
		newWriteCmd(o),
		newMkdirCmd(o),
		newRmCmd(o),
		newExistsCmd(o),
		newConfigCmd(o),
	)
	return rootCmd, nil
}

func (o *rootOptions) loadConfig() error {
	if o.configFile != "" {
		o.v.SetConfigFile(o.configFile)
		o.v.SetConfigType("yaml")
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	if err := o.v.Unmarshal(&o.config, viper.DecodeHook(cfg.DecodeHook()), cfg.DecoderConfigOption); err != nil {
		return fmt.Errorf("error while unmarshaling the config: %w", err)
	}

	if err := cfg.ValidateConfig(&o.config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Execute runs the podfs command line and exits non-zero on failure.
func Execute() {
	rootCmd, err := NewRootCmd(os.Stdout)
	if err == nil {
		err = rootCmd.Execute()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

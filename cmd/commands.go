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
	"context"
	"fmt"
	"os"

	"github.com/fairdatasociety/podfs/cfg"
	"github.com/fairdatasociety/podfs/internal/fsaccess"
	"github.com/fairdatasociety/podfs/internal/logger"
	"github.com/fairdatasociety/podfs/internal/storage/gateway"
	"github.com/fairdatasociety/podfs/internal/writesink"
	"github.com/spf13/cobra"
)

// withSession adapts fn to a cobra RunE that opens a session for the loaded
// config and closes it when fn returns.
func withSession(o *rootOptions, fn func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		s, err := newSession(ctx, &o.config)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := s.Close(ctx); closeErr != nil {
				logger.Warnf("Error while shutting down: %v", closeErr)
			}
		}()

		return fn(ctx, cmd, s, args)
	}
}

func newLsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir]",
		Short: "List a directory: sub-directories first, then files with their references",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(o, func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}

			entries, err := s.dir(dir).Entries(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				switch h := e.(type) {
				case *fsaccess.DirHandle:
					fmt.Fprintf(out, "%s/\n", h.Name())
				case *fsaccess.FileHandle:
					fmt.Fprintf(out, "%s\t%s\n", h.Name(), h.Reference())
				}
			}
			return nil
		}),
	}
}

func newCatCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(o, func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error {
			parent, name, err := s.parentAndName(args[0])
			if err != nil {
				return err
			}

			fh, err := parent.GetFileHandle(ctx, name, fsaccess.GetFileOptions{})
			if err != nil {
				return err
			}

			f, err := fh.GetFile(ctx)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(f.Content)
			return err
		}),
	}
}

func newPutCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put <local-file> <remote-path>",
		Short: "Upload a local file, replacing the remote content",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(o, func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			return writeFile(ctx, cmd, s, args[1], false, writesink.Write(data))
		}),
	}
}

func newWriteCmd(o *rootOptions) *cobra.Command {
	var keepExistingData bool

	writeCmd := &cobra.Command{
		Use:   "write <remote-path> <op>...",
		Short: "Apply write operations to a file and upload the result",
		Long: `Apply write operations to a file and upload the result once all of them
succeeded. Each op is one of:

  write:<data>         write data at the cursor
  write@<pos>:<data>   write data at pos, zero filling any gap
  seek:<pos>           move the cursor
  truncate:<size>      shrink or zero-extend the file`,
		Args: cobra.MinimumNArgs(2),
		RunE: withSession(o, func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error {
			ops := make([]writesink.Operation, 0, len(args)-1)
			for _, arg := range args[1:] {
				op, err := parseOperation(arg)
				if err != nil {
					return err
				}
				ops = append(ops, op)
			}

			return writeFile(ctx, cmd, s, args[0], keepExistingData, ops...)
		}),
	}
	writeCmd.Flags().BoolVar(&keepExistingData, "keep-existing-data", false, "Start from the file's current content instead of an empty file.")
	return writeCmd
}

// writeFile applies ops to the file at p through a writable stream and
// prints the reference of the uploaded content.
func writeFile(ctx context.Context, cmd *cobra.Command, s *session, p string, keep bool, ops ...writesink.Operation) error {
	parent, name, err := s.parentAndName(p)
	if err != nil {
		return err
	}

	fh, err := parent.GetFileHandle(ctx, name, fsaccess.GetFileOptions{Create: true})
	if err != nil {
		return err
	}

	ws, err := fh.CreateWritable(ctx, fsaccess.CreateWritableOptions{KeepExistingData: &keep})
	if err != nil {
		return err
	}

	for _, op := range ops {
		if err := ws.Write(op); err != nil {
			return fmt.Errorf("%v: %w", op, err)
		}
	}

	if err := ws.Close(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), fh.Reference())
	return nil
}

func newMkdirCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <dir>",
		Short: "Create a directory; its parent must exist",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(o, func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error {
			parent, name, err := s.parentAndName(args[0])
			if err != nil {
				return err
			}

			_, err = parent.GetDirectoryHandle(ctx, name, fsaccess.GetDirectoryOptions{Create: true})
			return err
		}),
	}
}

func newRmCmd(o *rootOptions) *cobra.Command {
	var recursive bool

	rmCmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(o, func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error {
			parent, name, err := s.parentAndName(args[0])
			if err != nil {
				return err
			}

			return parent.RemoveEntry(ctx, name, fsaccess.RemoveOptions{Recursive: recursive})
		}),
	}
	rmCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove directories and their contents.")
	return rmCmd
}

func newExistsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <reference>",
		Short: "Report whether content with the given reference is stored",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(o, func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error {
			ref, err := gateway.ParseReference(args[0])
			if err != nil {
				return err
			}

			ok, err := s.gw.Exists(ctx, ref)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		}),
	}
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			str, err := cfg.Stringify(&o.config)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), str)
			return err
		},
	}
}

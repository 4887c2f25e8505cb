//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

const debugTag = "bmeshdebug"

type cmdOptions struct {
	args   []string
	env    []string
	dir    string
	stream bool
}

type cmdOption func(*cmdOptions)

// withArgs appends to the arguments collected so far.
func withArgs(args ...string) cmdOption {
	return func(o *cmdOptions) {
		o.args = append(o.args, args...)
	}
}

func withEnv(kv ...string) cmdOption {
	return func(o *cmdOptions) {
		o.env = append(o.env, kv...)
	}
}

func withDir(dir string) cmdOption {
	return func(o *cmdOptions) {
		o.dir = dir
	}
}

func withStream() cmdOption {
	return func(o *cmdOptions) {
		o.stream = true
	}
}

func executeCmd(command string, options ...cmdOption) (string, error) {
	opts := &cmdOptions{}
	for _, o := range options {
		o(opts)
	}
	line := strings.TrimSpace(command + " " + strings.Join(opts.args, " "))
	if opts.dir != "" {
		fmt.Printf("[%s] %s\n", opts.dir, line)
	} else {
		fmt.Println(line)
	}

	cmd := exec.Command(command, opts.args...)
	cmd.Dir = opts.dir
	if len(opts.env) > 0 {
		cmd.Env = append(os.Environ(), opts.env...)
	}

	var out bytes.Buffer
	stream := opts.stream || mg.Verbose()
	if stream {
		cmd.Stdout = io.MultiWriter(&out, os.Stdout)
		cmd.Stderr = io.MultiWriter(&out, os.Stderr)
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &out
	}
	if err := cmd.Run(); err != nil {
		if !stream {
			fmt.Fprintln(os.Stderr, out.String())
		}
		return "", fmt.Errorf("%s: %w", line, err)
	}
	return out.String(), nil
}

// goCmd runs a go subcommand with output streamed to the terminal.
func goCmd(sub string, options ...cmdOption) error {
	_, err := executeCmd("go", append([]cmdOption{withArgs(sub), withStream()}, options...)...)
	return err
}

func goTidy() error {
	if err := goCmd("mod", withArgs("tidy")); err != nil {
		return err
	}
	return goCmd("vet", withArgs("./..."))
}

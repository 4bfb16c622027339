// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arsclib/arsc"
)

var (
	verbose     bool
	packages    bool
	dumpStrings bool
	roundtrip   bool
	skipStyles  bool
	all         bool
)

func prettyPrint(buf []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		log.Println("JSON indent error:", err)
		return string(buf)
	}
	return pretty.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpFile(filename string, cmd *cobra.Command) {
	log.Printf("processing %s", filename)

	f, err := arsc.New(filename, &arsc.Options{SkipStyles: skipStyles})
	if err != nil {
		log.Printf("error opening %s: %v", filename, err)
		return
	}
	defer f.Close()

	wantStrings, _ := cmd.Flags().GetBool("strings")
	if wantStrings || all {
		b, _ := json.Marshal(f.Table.Strings)
		fmt.Println(prettyPrint(b))
	}

	wantPackages, _ := cmd.Flags().GetBool("packages")
	if wantPackages || all {
		b, _ := json.Marshal(f.Table.Packages)
		fmt.Println(prettyPrint(b))
	}

	wantRoundtrip, _ := cmd.Flags().GetBool("roundtrip")
	if wantRoundtrip {
		out, err := f.Serialize()
		if err != nil {
			log.Printf("serialize failed for %s: %v", filename, err)
			return
		}
		if len(out) != f.Table.Size() {
			log.Printf("%s: Serialize() produced %d bytes, Size() reported %d", filename, len(out), f.Table.Size())
			return
		}
		log.Printf("%s: round trip ok (%d bytes)", filename, len(out))
	}
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]

	if !isDirectory(path) {
		dumpFile(path, cmd)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !isDirectory(p) {
			files = append(files, p)
		}
		return nil
	})
	for _, file := range files {
		dumpFile(file, cmd)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "arscdump",
		Short: "An Android compiled resource table (.arsc) inspector",
		Long:  "arscdump parses .arsc files and prints their structure, or verifies byte-exact round trip.",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("arscdump version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Dump one file, or every file under a directory",
		Args:  cobra.ExactArgs(1),
		Run:   dump,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVarP(&packages, "packages", "", false, "dump the package tree")
	dumpCmd.Flags().BoolVarP(&dumpStrings, "strings", "", false, "dump the global string pool")
	dumpCmd.Flags().BoolVarP(&roundtrip, "roundtrip", "", false, "re-serialize and verify the byte count matches")
	dumpCmd.Flags().BoolVarP(&skipStyles, "skip-styles", "", false, "discard style spans while parsing")
	dumpCmd.Flags().BoolVarP(&all, "all", "", false, "dump everything")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

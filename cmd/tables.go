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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/umvarma/gonastran/op2"
	"github.com/umvarma/gonastran/results"
)

// TablesCmd represents the tables command
var TablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of an OP2 file",
	Long: `
Walks an OP2 file and lists every table with its offset, family and
sub-record counts.

gonastran tables model.op2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := ListTables(args[0], os.Stdout); err != nil {
			logger.Error("tables failed", "file", args[0], "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(TablesCmd)
}

// ListTables prints the table inventory of path. Decode failures are
// reported after the tables that were walked.
func ListTables(path string, w io.Writer) (err error) {
	var res *op2.Result
	res, err = op2.ReadFile(path, op2.Options{Duplicates: results.KeepFirst})
	if res != nil {
		for _, ti := range res.Tables {
			fmt.Fprintf(w, "%-8s %10d %-18s %4d\n", ti.Name, ti.Offset, ti.Family, ti.SubRecords)
		}
	}
	return
}

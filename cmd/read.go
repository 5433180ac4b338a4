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
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ghodss/yaml"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/umvarma/gonastran/InputParameters"
	"github.com/umvarma/gonastran/op2"
)

type ReadJob struct {
	File       string
	ParamsFile string
	JSONFile   string
	YAML       bool
	Perf       bool
	More       []string
	Parallel   int
}

// ReadCmd represents the read command
var ReadCmd = &cobra.Command{
	Use:   "read [more.op2 ...]",
	Short: "Read an OP2 file and summarize the results it holds",
	Long: `
Reads every result table of an OP2 file and prints a summary of the tables,
result kinds, subcases and factors found.

gonastran read -F model.op2 -I reader.yaml --json summary.json

Further files may follow as arguments; they are read concurrently.

gonastran read -F sol103.op2 sol108.op2 sol109.op2 --parallel 2`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		job := &ReadJob{}
		if job.File, err = cmd.Flags().GetString("op2File"); err != nil {
			panic(err)
		}
		if job.ParamsFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		job.JSONFile, _ = cmd.Flags().GetString("json")
		job.YAML, _ = cmd.Flags().GetBool("yaml")
		job.Perf, _ = cmd.Flags().GetBool("perf")
		job.Parallel, _ = cmd.Flags().GetInt("parallel")
		job.More = args
		if _, err = RunRead(job, logger, os.Stdout); err != nil {
			logger.Error("read failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ReadCmd)
	ReadCmd.Flags().StringP("op2File", "F", "", "OP2 file to read")
	ReadCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for reader parameters like:\n\t- DuplicatePolicy\n\t- ResultKinds")
	ReadCmd.Flags().String("json", "", "write the summary as JSON to this file")
	ReadCmd.Flags().Bool("yaml", false, "print the summary as YAML")
	ReadCmd.Flags().Bool("perf", false, "count the CPU instructions of the read")
	ReadCmd.Flags().Int("parallel", 0, "files read at once, 0 is one per CPU")
}

const exampleParameters = `
########################################
Title: "Wing modes"
StrictUnsupported: false
DuplicatePolicy: reject # keepfirst, overwrite
RepeatedHeaders: false
ResultKinds: # empty reads everything
  - eigenvectors
########################################
`

// readerOptions loads the reader parameters file, when there is one.
func readerOptions(job *ReadJob) (opts op2.Options, err error) {
	if len(job.ParamsFile) == 0 {
		return
	}
	var data []byte
	if data, err = os.ReadFile(job.ParamsFile); err != nil {
		return
	}
	rp := &InputParameters.ReaderParameters{}
	if err = rp.Parse(data); err != nil {
		return opts, fmt.Errorf("%s: %w\nExample File:%s", job.ParamsFile, err, exampleParameters)
	}
	return rp.Options()
}

// Files lists the files of the job, -F first.
func (job *ReadJob) Files() (files []string) {
	if len(job.File) != 0 {
		files = append(files, job.File)
	}
	return append(files, job.More...)
}

// RunRead reads the files of the job, logs what happened and writes one
// summary per file. A batch keeps going past a failed file and returns the
// first error once every file has been read.
func RunRead(job *ReadJob, log *slog.Logger, out io.Writer) (sums []*Summary, err error) {
	files := job.Files()
	if len(files) == 0 {
		return nil, fmt.Errorf("must supply an OP2 file (-F, --op2File)")
	}
	var (
		opts  op2.Options
		batch []op2.FileResult
	)
	if opts, err = readerOptions(job); err != nil {
		return
	}
	start := time.Now()
	read := func() error {
		batch = op2.ReadFiles(files, opts, job.Parallel)
		return nil
	}
	if job.Perf {
		// Instructions are counted on the calling thread only.
		read = func() error {
			batch = batch[:0]
			for _, file := range files {
				res, err := op2.ReadFile(file, opts)
				batch = append(batch, op2.FileResult{Path: file, Result: res, Err: err})
			}
			return nil
		}
		var instructions uint64
		if instructions, err = countInstructions(read); err == nil {
			log.Info("perf", "instructions", instructions, "files", len(files))
		} else if len(batch) == 0 {
			log.Warn("perf counters unavailable", "err", err)
			err = read()
		}
	} else {
		err = read()
	}
	if err != nil {
		return
	}
	for _, fr := range batch {
		flog := log.With("file", fr.Path)
		if fr.Result != nil {
			flog = flog.With("read", fr.Result.ID)
			for _, w := range fr.Result.Warnings {
				flog.Warn("skipped", "table", w.Table, "subRecord", w.SubRecord, "offset", w.Offset, "err", w.Err)
			}
		}
		if fr.Err != nil {
			flog.Error("read failed", "err", fr.Err)
			if err == nil {
				err = fr.Err
			}
			continue
		}
		res := fr.Result
		flog.Info("read complete",
			"tables", res.Stats.Tables, "decoded", res.Stats.Decoded, "skipped", res.Stats.Skipped,
			"rows", res.Stats.Rows)
		sums = append(sums, NewSummary(fr.Path, res))
	}
	log.Info("batch complete", "files", len(files), "read", len(sums), "elapsed", time.Since(start))
	if len(sums) == 0 {
		return
	}
	if werr := writeSummaries(job, sums, out); werr != nil && err == nil {
		err = werr
	}
	return
}

// writeSummaries writes the JSON file, a single object for one file and an
// array for a batch, then prints the summaries as YAML or text.
func writeSummaries(job *ReadJob, sums []*Summary, out io.Writer) (err error) {
	if job.JSONFile != "" {
		var (
			data []byte
			v    interface{} = sums
		)
		if len(sums) == 1 {
			v = sums[0]
		}
		if data, err = json.MarshalIndent(v, "", "  "); err != nil {
			return
		}
		if err = os.WriteFile(job.JSONFile, data, 0644); err != nil {
			return
		}
	}
	var buf bytes.Buffer
	for _, sum := range sums {
		if job.YAML {
			var data []byte
			if data, err = yaml.Marshal(sum); err != nil {
				return
			}
			buf.WriteString("---\n")
			buf.Write(data)
			continue
		}
		sum.Print(&buf)
	}
	_, err = out.Write(buf.Bytes())
	return
}

package cmd

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/umvarma/gonastran/op2"
)

type Summary struct {
	ReadID    string         `json:"read_id"`
	File      string         `json:"file"`
	ByteOrder string         `json:"byte_order"`
	Label     string         `json:"label,omitempty"`
	Tables    []TableSummary `json:"tables"`
	Results   []KindSummary  `json:"results"`
	Warnings  []string       `json:"warnings,omitempty"`
	Stats     op2.Stats      `json:"stats"`
}

type TableSummary struct {
	Name       string `json:"name"`
	Offset     int64  `json:"offset"`
	Family     string `json:"family"`
	SubRecords int    `json:"sub_records"`
	Decoded    int    `json:"decoded"`
	Skipped    int    `json:"skipped"`
}

type KindSummary struct {
	Kind string       `json:"kind"`
	Keys []KeySummary `json:"keys"`
}

type KeySummary struct {
	Key     string `json:"key"`
	Rows    int    `json:"rows"`
	FirstID int    `json:"first_id"`
	LastID  int    `json:"last_id"`
	Title   string `json:"title,omitempty"`
}

func NewSummary(file string, res *op2.Result) (sum *Summary) {
	sum = &Summary{
		ReadID:    res.ID,
		File:      file,
		ByteOrder: "little",
		Label:     res.File.Label,
		Stats:     res.Stats,
	}
	if res.Order == binary.BigEndian {
		sum.ByteOrder = "big"
	}
	for _, ti := range res.Tables {
		sum.Tables = append(sum.Tables, TableSummary{
			Name:       ti.Name,
			Offset:     ti.Offset,
			Family:     ti.Family.String(),
			SubRecords: ti.SubRecords,
			Decoded:    ti.Decoded,
			Skipped:    ti.Skipped,
		})
	}
	for _, kind := range res.Results.Kinds() {
		tbl := res.Results.Table(kind)
		ks := KindSummary{Kind: kind}
		for _, key := range tbl.Keys() {
			ids := tbl.IDs(key)
			k := KeySummary{Key: key.String(), Rows: len(ids)}
			if len(ids) != 0 {
				k.FirstID, k.LastID = ids[0], ids[len(ids)-1]
			}
			if h, ok := tbl.Header(key); ok {
				k.Title = h.Title
			}
			ks.Keys = append(ks.Keys, k)
		}
		sum.Results = append(sum.Results, ks)
	}
	for _, w := range res.Warnings {
		sum.Warnings = append(sum.Warnings, w.String())
	}
	return
}

func (sum *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "%s (%s endian)\n", sum.File, sum.ByteOrder)
	for _, ts := range sum.Tables {
		fmt.Fprintf(w, "%-8s @%-10d %-18s sub-records %4d decoded %4d skipped %4d\n",
			ts.Name, ts.Offset, ts.Family, ts.SubRecords, ts.Decoded, ts.Skipped)
	}
	for _, ks := range sum.Results {
		fmt.Fprintf(w, "%s\n", ks.Kind)
		for _, k := range ks.Keys {
			fmt.Fprintf(w, "\t%-40s %6d rows, ids %d..%d\n", k.Key, k.Rows, k.FirstID, k.LastID)
		}
	}
	for _, warning := range sum.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/umvarma/gonastran/op2"
	"github.com/umvarma/gonastran/results"
)

// Parameters obtained from the YAML input file.
// ghodss/yaml goes through encoding/json, so the tags are json tags.
type ReaderParameters struct {
	Title             string   `json:"Title"`
	StrictUnsupported bool     `json:"StrictUnsupported"`
	DuplicatePolicy   string   `json:"DuplicatePolicy"`
	ResultKinds       []string `json:"ResultKinds"`
	RepeatedHeaders   bool     `json:"RepeatedHeaders"`
}

func (rp *ReaderParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

// Options converts the parameters into reader options.
func (rp *ReaderParameters) Options() (opts op2.Options, err error) {
	if opts.Duplicates, err = results.ParseDuplicatePolicy(rp.DuplicatePolicy); err != nil {
		return
	}
	opts.StrictUnsupported = rp.StrictUnsupported
	opts.RepeatedHeaders = rp.RepeatedHeaders
	if len(rp.ResultKinds) != 0 {
		opts.ResultKinds = append([]string(nil), rp.ResultKinds...)
		sort.Strings(opts.ResultKinds)
	}
	return
}

func (rp *ReaderParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%v]\t\t\t= Strict Unsupported\n", rp.StrictUnsupported)
	fmt.Printf("[%v]\t\t\t= Repeated Headers\n", rp.RepeatedHeaders)
	policy := rp.DuplicatePolicy
	if policy == "" {
		policy = results.Reject.String()
	}
	fmt.Printf("[%s]\t\t\t= Duplicate Policy\n", policy)
	kinds := append([]string(nil), rp.ResultKinds...)
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("ResultKinds[%s]\n", kind)
	}
}

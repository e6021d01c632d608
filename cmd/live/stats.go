package main

import (
	"io"

	"github.com/peamaeq/makepad/live"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

type docStats struct {
	Levels   []int `yaml:"levels"`
	Vacant   int   `yaml:"vacant"`
	Multi    int   `yaml:"multiIds"`
	Strings  int   `yaml:"strings"`
	Tokens   int   `yaml:"tokens"`
	Scopes   int   `yaml:"scopes"`
	Names    int   `yaml:"names"`
	Relocate int   `yaml:"relocated,omitempty"`
}

func stats(cfg *StatsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stats.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachDoc(cfg.MainConfig, cc, args, func(doc *live.Document, w io.Writer) error {
		st := &docStats{}
		if cfg.Compact {
			for from, to := range doc.Compact() {
				if from != to {
					st.Relocate++
				}
			}
		}
		for i := 0; i < doc.Levels(); i++ {
			st.Levels = append(st.Levels, doc.LevelLen(i))
		}
		st.Vacant = doc.Vacant()
		st.Multi = len(doc.MultiIDs)
		st.Strings = len(doc.Strings)
		st.Tokens = len(doc.Tokens)
		st.Scopes = len(doc.Scopes)
		st.Names = doc.Names.Len()
		d, err := yaml.Marshal(st)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	})
}

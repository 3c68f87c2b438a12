// Package demo serves the static records substituted when live data is
// unavailable.
package demo

import (
	_ "embed"
	"maps"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/token-scout/internal/model"
)

//go:embed dataset.yaml
var datasetYAML []byte

// Dataset holds one demo record per artifact.
type Dataset struct {
	token model.TokenDescriptor
	risk  model.RiskAssessment
	score model.ScoreResult
}

type document struct {
	Demo struct {
		Token model.TokenDescriptor `yaml:"token"`
		Risk  model.RiskAssessment  `yaml:"risk"`
		Score model.ScoreResult     `yaml:"score"`
	} `yaml:"demo"`
}

// Load parses the embedded dataset.
func Load() (*Dataset, error) {
	return Parse(datasetYAML)
}

// MustLoad is Load for program start-up; it panics on a broken dataset.
func MustLoad() *Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}

// Parse decodes a dataset document and checks that every artifact is usable.
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "demo: parse dataset")
	}

	d := doc.Demo
	if d.Token.Name == "" || d.Token.Symbol == "" {
		return nil, eris.New("demo: token name and symbol are required")
	}
	if !d.Risk.Risk.Valid() {
		return nil, eris.Errorf("demo: invalid risk level %q", d.Risk.Risk)
	}
	if d.Risk.Details == nil {
		d.Risk.Details = map[string]any{}
	}
	if d.Score.Probability < 0 || d.Score.Probability > 1 {
		return nil, eris.Errorf("demo: probability %v out of range", d.Score.Probability)
	}
	if d.Score.Explain == "" {
		return nil, eris.New("demo: score explain is required")
	}

	return &Dataset{token: d.Token, risk: d.Risk, score: d.Score}, nil
}

// Token returns the demo token descriptor.
func (d *Dataset) Token() model.TokenDescriptor {
	return d.token
}

// Risk returns the demo risk assessment. Details is a fresh top-level copy.
func (d *Dataset) Risk() model.RiskAssessment {
	r := d.risk
	r.Details = maps.Clone(d.risk.Details)
	return r
}

// Score returns the demo score.
func (d *Dataset) Score() model.ScoreResult {
	s := d.score
	s.Factors = maps.Clone(d.score.Factors)
	return s
}

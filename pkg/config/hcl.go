package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// max_versions stays an expression so a bad value can fall back to zero
// instead of failing the decode.
type hclConfig struct {
	SourceDirectory      string         `hcl:"ruta_origen,optional"`
	SourceFileName       string         `hcl:"archivo,optional"`
	DestinationDirectory string         `hcl:"ruta_destino,optional"`
	MaxVersions          hcl.Expression `hcl:"max_versions,optional"`
}

func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		SourceDirectory:      raw.SourceDirectory,
		SourceFileName:       raw.SourceFileName,
		DestinationDirectory: raw.DestinationDirectory,
	}

	if raw.MaxVersions != nil {
		val, diags := raw.MaxVersions.Value(evalCtx)
		if !diags.HasErrors() {
			cfg.MaxVersions = maxVersionsFromCty(val)
		}
	}

	return cfg, nil
}

func maxVersionsFromCty(val cty.Value) MaxVersions {
	if val.IsNull() || !val.IsKnown() {
		return 0
	}
	switch val.Type() {
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return clampMaxVersions(f)
	case cty.String:
		return maxVersionsFrom(val.AsString())
	default:
		return 0
	}
}

func encodeHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("ruta_origen", cty.StringVal(cfg.SourceDirectory))
	body.SetAttributeValue("archivo", cty.StringVal(cfg.SourceFileName))
	body.SetAttributeValue("ruta_destino", cty.StringVal(cfg.DestinationDirectory))
	body.SetAttributeValue("max_versions", cty.NumberIntVal(int64(cfg.MaxVersions)))
	return f.Bytes()
}

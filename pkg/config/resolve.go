package config

// Resolve folds configuration layers into one. Layers are given from lowest
// to highest priority; a non-empty field in a later layer wins. A layer's
// input_formats list replaces earlier lists as a whole. Nil layers are
// skipped. The inputs are not modified.
func Resolve(layers ...*Config) *Config {
	out := &Config{}
	for _, l := range layers {
		if l == nil {
			continue
		}
		out = merge(out, l)
	}
	return out
}

func merge(base, over *Config) *Config {
	out := *base
	out.registry = nil

	if len(over.Timestamp.InputFormats) > 0 {
		out.Timestamp.InputFormats = cloneFormats(over.Timestamp.InputFormats)
	}
	out.Timestamp.OutputFormat = pick(base.Timestamp.OutputFormat, over.Timestamp.OutputFormat)

	out.Files.InputDir = pick(base.Files.InputDir, over.Files.InputDir)
	out.Files.OutputDir = pick(base.Files.OutputDir, over.Files.OutputDir)
	out.Files.Encoding = pick(base.Files.Encoding, over.Files.Encoding)
	if over.Files.CreateBackup != nil {
		out.Files.CreateBackup = boolPtr(*over.Files.CreateBackup)
	}

	out.OutputNaming.Template = pick(base.OutputNaming.Template, over.OutputNaming.Template)
	out.OutputNaming.PositiveSign = pick(base.OutputNaming.PositiveSign, over.OutputNaming.PositiveSign)
	out.OutputNaming.NegativeSign = pick(base.OutputNaming.NegativeSign, over.OutputNaming.NegativeSign)

	out.Processing.OnParseError = pick(base.Processing.OnParseError, over.Processing.OnParseError)

	out.source = pick(base.source, over.source)
	return &out
}

func pick(base, over string) string {
	if over != "" {
		return over
	}
	return base
}

func cloneFormats(in []FormatConfig) []FormatConfig {
	out := make([]FormatConfig, len(in))
	for i, f := range in {
		out[i] = f
		out[i].Groups = append([]string(nil), f.Groups...)
		if f.Enabled != nil {
			out[i].Enabled = boolPtr(*f.Enabled)
		}
	}
	return out
}

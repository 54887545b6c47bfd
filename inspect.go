package tagjson

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hengadev/tagjson/internal/jsonbase"
)

// FindingKind says how Parse would treat a string.
type FindingKind string

const (
	// FindingTagged is a tag that revives to a value.
	FindingTagged FindingKind = "tagged"
	// FindingEscaped is a user string whose marker run Parse halves.
	FindingEscaped FindingKind = "escaped"
	// FindingDegraded is tag-shaped text that Parse leaves as a string.
	FindingDegraded FindingKind = "degraded"
)

// Finding describes one string in tagged JSON text that Parse does not
// return verbatim, or that looks like a tag and stays text.
type Finding struct {
	// Path is the RFC 6901 JSON pointer of the string. The root is "".
	Path string      `json:"path"`
	Kind FindingKind `json:"kind"`
	// Serializer is the tag name for tagged and degraded findings.
	Serializer string `json:"serializer,omitempty"`
	// Text is the string as it appears in the input.
	Text string `json:"text"`
	// Reason explains a degraded finding.
	Reason string `json:"reason,omitempty"`
}

// Inspect reports every tagged, escaped or degraded string in data, in
// document order with object keys sorted. It runs serializers to decide
// whether a tag revives but records no metrics.
func (c *Codec) Inspect(data []byte) ([]Finding, error) {
	tree, err := jsonbase.Parse(data, nil, c.parseOptions()...)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	c.inspect("", tree, &findings)
	return findings, nil
}

func (c *Codec) inspect(path string, v any, findings *[]Finding) {
	switch value := v.(type) {
	case string:
		d := c.decodeString(value)
		finding := Finding{Path: path, Serializer: d.name, Text: value, Reason: d.reason}
		switch d.kind {
		case taggedString:
			finding.Kind = FindingTagged
		case escapedString:
			finding.Kind = FindingEscaped
		case degradedString:
			finding.Kind = FindingDegraded
			if d.err != nil {
				finding.Reason += ": " + d.err.Error()
			}
		default:
			return
		}
		*findings = append(*findings, finding)
	case []any:
		for i, member := range value {
			c.inspect(path+"/"+strconv.Itoa(i), member, findings)
		}
	case map[string]any:
		keys := make([]string, 0, len(value))
		for k := range value {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			c.inspect(path+"/"+escapePointerToken(k), value[k], findings)
		}
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointerToken(token string) string {
	return pointerEscaper.Replace(token)
}

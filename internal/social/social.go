// Package social extracts social links from Helius DAS asset documents.
//
// Metadata publishers do not agree on where social links live, so the
// extractor runs a fixed list of probes, each looking at one known shape,
// and returns the first hit.
package social

import (
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// Platforms the token descriptor carries.
const (
	Twitter  = "twitter"
	Telegram = "telegram"
	Website  = "website"
)

// Probe looks for a platform link in one location of the document.
type Probe func(doc gjson.Result, platform string) (string, bool)

// Probes returns the lookup order. Earlier probes win.
func Probes() []Probe {
	return []Probe{
		FromAttributes,
		FromJSONKey,
		FromExternalURL,
		FromLinkList,
		FromLinkMap,
	}
}

// Extract returns the first link for platform found in doc, or "".
func Extract(doc gjson.Result, platform string) string {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" || !doc.IsObject() {
		return ""
	}
	for _, probe := range Probes() {
		if v, ok := probe(doc, platform); ok {
			return v
		}
	}
	return ""
}

// ExtractAll returns twitter, telegram and website links in one pass.
func ExtractAll(doc gjson.Result) (twitter, telegram, website string) {
	return Extract(doc, Twitter), Extract(doc, Telegram), Extract(doc, Website)
}

// FromAttributes checks content.metadata.attributes for the first trait whose
// trait_type or value mentions the platform. Only that trait is considered.
func FromAttributes(doc gjson.Result, platform string) (string, bool) {
	attrs := doc.Get("content.metadata.attributes")
	if !attrs.IsArray() {
		return "", false
	}
	match, ok := lo.Find(attrs.Array(), func(attr gjson.Result) bool {
		return containsFold(stringAt(attr, "trait_type"), platform) ||
			containsFold(stringAt(attr, "value"), platform)
	})
	if !ok {
		return "", false
	}
	return nonEmpty(stringAt(match, "value"))
}

// FromJSONKey checks content.json.<platform>.
func FromJSONKey(doc gjson.Result, platform string) (string, bool) {
	return nonEmpty(stringAt(doc.Get("content.json"), platform))
}

// FromExternalURL checks content.json.external_url, for websites only.
func FromExternalURL(doc gjson.Result, platform string) (string, bool) {
	if platform != Website {
		return "", false
	}
	return nonEmpty(stringAt(doc.Get("content.json"), "external_url"))
}

// FromLinkList checks content.links when it is a list of raw URLs.
func FromLinkList(doc gjson.Result, platform string) (string, bool) {
	links := doc.Get("content.links")
	if !links.IsArray() {
		return "", false
	}
	match, ok := lo.Find(links.Array(), func(link gjson.Result) bool {
		return link.Type == gjson.String && containsFold(link.Str, platform)
	})
	if !ok {
		return "", false
	}
	return nonEmpty(match.Str)
}

// FromLinkMap checks content.links.<platform> when links is an object.
func FromLinkMap(doc gjson.Result, platform string) (string, bool) {
	links := doc.Get("content.links")
	if !links.IsObject() {
		return "", false
	}
	return nonEmpty(stringAt(links, platform))
}

// stringAt returns the string value of a direct child key, or "" when the
// parent is not an object or the child is not a string.
func stringAt(parent gjson.Result, key string) string {
	if !parent.IsObject() {
		return ""
	}
	v := parent.Get(gjson.Escape(key))
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

func containsFold(s, substr string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), substr)
}

func nonEmpty(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	return s, true
}

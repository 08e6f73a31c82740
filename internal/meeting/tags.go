package meeting

import "strings"

// NormalizeTag trims surrounding whitespace. Casing and inner spacing are kept.
func NormalizeTag(tag string) string {
	return strings.TrimSpace(tag)
}

// HasTag reports whether the item carries tag, using exact string equality.
func (a ActionItem) HasTag(tag string) bool {
	for _, existing := range a.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// TagsWith returns a fresh tag set with tag appended. The second value is
// false when the trimmed tag is empty or already present.
func (a ActionItem) TagsWith(tag string) ([]string, bool) {
	tag = NormalizeTag(tag)
	if tag == "" || a.HasTag(tag) {
		return append([]string(nil), a.Tags...), false
	}
	out := make([]string, 0, len(a.Tags)+1)
	out = append(out, a.Tags...)
	return append(out, tag), true
}

// TagsWithout returns a fresh tag set without any exact match of tag. The
// result is never nil so it always encodes as a JSON array.
func (a ActionItem) TagsWithout(tag string) []string {
	out := make([]string, 0, len(a.Tags))
	for _, existing := range a.Tags {
		if existing == tag {
			continue
		}
		out = append(out, existing)
	}
	return out
}

package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/alexisbeaulieu97/slidesmith/internal/bullet"
)

// ErrUnknownField is returned for field paths that do not apply to a slide.
var ErrUnknownField = errors.New("unknown field")

// Field names. List fields take an index; bullet fields may take a part.
const (
	FieldHeadline     = "headline"
	FieldSubheadline  = "subheadline"
	FieldBullets      = "bullets"
	FieldMetrics      = "metrics"
	FieldItems        = "items"
	FieldLeftTitle    = "left_title"
	FieldRightTitle   = "right_title"
	FieldLeftBullets  = "left_bullets"
	FieldRightBullets = "right_bullets"
)

// Parts of a list entry.
const (
	PartLabel       = "label"
	PartDetail      = "detail"
	PartValue       = "value"
	PartDescription = "description"
	PartPhase       = "phase"
	PartTitle       = "title"
)

// FieldRef addresses one editable text field inside a slide, e.g.
// "headline", "bullets[2].detail" or "metrics[0].value".
type FieldRef struct {
	Name  string
	Index int
	Part  string
}

var fieldPattern = regexp.MustCompile(`^([a-z_]+)(?:\[(\d+)\])?(?:\.([a-z]+))?$`)

// ParseField parses the textual form produced by FieldRef.String.
func ParseField(s string) (FieldRef, error) {
	m := fieldPattern.FindStringSubmatch(s)
	if m == nil {
		return FieldRef{}, fmt.Errorf("%w: %q", ErrUnknownField, s)
	}

	ref := FieldRef{Name: m[1], Index: -1, Part: m[3]}
	if m[2] != "" {
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return FieldRef{}, fmt.Errorf("%w: %q", ErrUnknownField, s)
		}
		ref.Index = idx
	}
	if isListField(ref.Name) != (ref.Index >= 0) {
		return FieldRef{}, fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return ref, nil
}

func isListField(name string) bool {
	switch name {
	case FieldBullets, FieldMetrics, FieldItems, FieldLeftBullets, FieldRightBullets:
		return true
	}
	return false
}

// Scalar builds a ref to a non-list field.
func Scalar(name string) FieldRef { return FieldRef{Name: name, Index: -1} }

// Entry builds a ref to a list entry, optionally narrowed to one part.
func Entry(name string, index int, part string) FieldRef {
	return FieldRef{Name: name, Index: index, Part: part}
}

func (r FieldRef) String() string {
	s := r.Name
	if r.Index >= 0 {
		s += "[" + strconv.Itoa(r.Index) + "]"
	}
	if r.Part != "" {
		s += "." + r.Part
	}
	return s
}

// Fields lists the editable fields of a slide in display order. Labeled
// content bullets are exposed as separate label and detail fields.
func Fields(s Slide) []FieldRef {
	refs := []FieldRef{Scalar(FieldHeadline)}

	switch b := s.Body.(type) {
	case *Title:
		refs = append(refs, Scalar(FieldSubheadline))
	case *Agenda:
		refs = appendList(refs, FieldBullets, len(b.Bullets))
	case *Content:
		for i, text := range b.Bullets {
			if bullet.IsLabeled(text) {
				refs = append(refs, Entry(FieldBullets, i, PartLabel), Entry(FieldBullets, i, PartDetail))
				continue
			}
			refs = append(refs, Entry(FieldBullets, i, ""))
		}
	case *Closing:
		refs = append(refs, Scalar(FieldSubheadline))
		refs = appendList(refs, FieldBullets, len(b.Bullets))
	case *Data:
		for i := range b.Metrics {
			refs = append(refs,
				Entry(FieldMetrics, i, PartValue),
				Entry(FieldMetrics, i, PartLabel),
				Entry(FieldMetrics, i, PartDescription))
		}
	case *Timeline:
		for i := range b.Items {
			refs = append(refs,
				Entry(FieldItems, i, PartPhase),
				Entry(FieldItems, i, PartTitle),
				Entry(FieldItems, i, PartDescription))
		}
	case *TwoColumn:
		refs = append(refs, Scalar(FieldLeftTitle))
		refs = appendList(refs, FieldLeftBullets, len(b.LeftBullets))
		refs = append(refs, Scalar(FieldRightTitle))
		refs = appendList(refs, FieldRightBullets, len(b.RightBullets))
	}

	return refs
}

func appendList(refs []FieldRef, name string, n int) []FieldRef {
	for i := 0; i < n; i++ {
		refs = append(refs, Entry(name, i, ""))
	}
	return refs
}

// Get reads the field addressed by ref.
func Get(s Slide, ref FieldRef) (string, error) {
	p, err := locate(&s, ref)
	if err != nil {
		return "", err
	}
	return p.get(), nil
}

// Set writes value into the field addressed by ref. Writing the label or
// detail of a bullet rebuilds the whole bullet with its original separator.
func Set(s *Slide, ref FieldRef, value string) error {
	p, err := locate(s, ref)
	if err != nil {
		return err
	}
	p.set(value)
	return nil
}

// accessor reads and writes one string inside a body.
type accessor struct {
	get func() string
	set func(string)
}

func strField(p *string) accessor {
	return accessor{get: func() string { return *p }, set: func(v string) { *p = v }}
}

func locate(s *Slide, ref FieldRef) (accessor, error) {
	unknown := fmt.Errorf("%w: %s on %s slide", ErrUnknownField, ref, s.Kind())

	if ref.Name == FieldHeadline && ref.Index < 0 && ref.Part == "" {
		return headlineField(s), nil
	}

	switch b := s.Body.(type) {
	case *Title:
		if ref.Name == FieldSubheadline && ref.Part == "" {
			return strField(&b.Subheadline), nil
		}
	case *Agenda:
		if ref.Name == FieldBullets {
			return bulletField(b.Bullets, ref)
		}
	case *Content:
		if ref.Name == FieldBullets {
			return bulletField(b.Bullets, ref)
		}
	case *Closing:
		switch ref.Name {
		case FieldSubheadline:
			if ref.Part == "" {
				return strField(&b.Subheadline), nil
			}
		case FieldBullets:
			return bulletField(b.Bullets, ref)
		}
	case *Data:
		if ref.Name == FieldMetrics {
			if ref.Index < 0 || ref.Index >= len(b.Metrics) {
				return accessor{}, fmt.Errorf("%s: %w", ref, ErrIndexOutOfRange)
			}
			m := &b.Metrics[ref.Index]
			switch ref.Part {
			case PartLabel:
				return strField(&m.Label), nil
			case PartValue:
				return strField(&m.Value), nil
			case PartDescription:
				return strField(&m.Description), nil
			}
		}
	case *Timeline:
		if ref.Name == FieldItems {
			if ref.Index < 0 || ref.Index >= len(b.Items) {
				return accessor{}, fmt.Errorf("%s: %w", ref, ErrIndexOutOfRange)
			}
			it := &b.Items[ref.Index]
			switch ref.Part {
			case PartPhase:
				return strField(&it.Phase), nil
			case PartTitle:
				return strField(&it.Title), nil
			case PartDescription:
				return strField(&it.Description), nil
			}
		}
	case *TwoColumn:
		switch ref.Name {
		case FieldLeftTitle:
			return strField(&b.LeftTitle), nil
		case FieldRightTitle:
			return strField(&b.RightTitle), nil
		case FieldLeftBullets:
			return bulletField(b.LeftBullets, ref)
		case FieldRightBullets:
			return bulletField(b.RightBullets, ref)
		}
	}

	return accessor{}, unknown
}

func headlineField(s *Slide) accessor {
	switch b := s.Body.(type) {
	case *Title:
		return strField(&b.Headline)
	case *Agenda:
		return strField(&b.Headline)
	case *Content:
		return strField(&b.Headline)
	case *Closing:
		return strField(&b.Headline)
	case *Data:
		return strField(&b.Headline)
	case *Timeline:
		return strField(&b.Headline)
	case *TwoColumn:
		return strField(&b.Headline)
	}
	// nil body: edits go to a fresh content slide
	c := &Content{Bullets: []string{}}
	s.Body = c
	return strField(&c.Headline)
}

func bulletField(list []string, ref FieldRef) (accessor, error) {
	if ref.Index < 0 || ref.Index >= len(list) {
		return accessor{}, fmt.Errorf("%s: %w", ref, ErrIndexOutOfRange)
	}
	p := &list[ref.Index]

	switch ref.Part {
	case "":
		return strField(p), nil
	case PartLabel:
		return accessor{
			get: func() string { return bullet.Split(*p).Label },
			set: func(v string) { *p = bullet.Split(*p).WithLabel(v) },
		}, nil
	case PartDetail:
		return accessor{
			get: func() string { return bullet.Split(*p).Detail },
			set: func(v string) { *p = bullet.Split(*p).WithDetail(v) },
		}, nil
	}
	return accessor{}, fmt.Errorf("%w: %s", ErrUnknownField, ref)
}

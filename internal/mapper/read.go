package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tidwall/gjson"
)

var now = time.Now

// primary backend format first, fallbacks after
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type reader struct {
	obj gjson.Result
	rep *Report
}

func newReader(obj gjson.Result, rep *Report) *reader {
	return &reader{obj: obj, rep: rep}
}

// lookup returns the first non-null value among paths.
func (r *reader) lookup(paths ...string) (gjson.Result, string, bool) {
	for _, p := range paths {
		v := r.obj.Get(p)
		if v.Exists() && v.Type != gjson.Null {
			return v, p, true
		}
	}
	return gjson.Result{}, paths[0], false
}

func toInt(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return n, true
	default:
		return 0, false
	}
}

func toFloat(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		s := strings.ReplaceAll(strings.TrimSpace(v.Str), ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toBool(v gjson.Result) (bool, bool) {
	switch v.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.Number:
		return v.Int() != 0, true
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "1", "si", "sí", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

func (r *reader) intOr(def int, paths ...string) int {
	v, field, ok := r.lookup(paths...)
	if !ok {
		r.rep.add(field, "missing", def)
		return def
	}
	n, ok := toInt(v)
	if !ok {
		r.rep.add(field, "not a number", def)
		return def
	}
	return n
}

// optInt yields nil for missing optional references without reporting them.
func (r *reader) optInt(paths ...string) *int {
	v, field, ok := r.lookup(paths...)
	if !ok {
		return nil
	}
	n, ok := toInt(v)
	if !ok {
		r.rep.add(field, "not a number", nil)
		return nil
	}
	return &n
}

func (r *reader) floatOr(def float64, paths ...string) (float64, bool) {
	v, field, ok := r.lookup(paths...)
	if !ok {
		r.rep.add(field, "missing", def)
		return def, false
	}
	f, ok := toFloat(v)
	if !ok {
		r.rep.add(field, "not a number", def)
		return def, false
	}
	return f, true
}

func (r *reader) boolOr(def bool, paths ...string) bool {
	v, field, ok := r.lookup(paths...)
	if !ok {
		r.rep.add(field, "missing", def)
		return def
	}
	b, ok := toBool(v)
	if !ok {
		r.rep.add(field, "not a boolean", def)
		return def
	}
	return b
}

// text reads string fields; absence of optional text is not reported.
func (r *reader) text(paths ...string) string {
	v, _, ok := r.lookup(paths...)
	if !ok {
		return ""
	}
	if v.Type == gjson.String {
		return v.Str
	}
	return v.Raw
}

func (r *reader) requiredText(paths ...string) (string, bool) {
	v, _, ok := r.lookup(paths...)
	if !ok || v.Type == gjson.JSON {
		return "", false
	}
	s := v.String()
	return s, strings.TrimSpace(s) != ""
}

func (r *reader) timeOr(paths ...string) time.Time {
	v, field, ok := r.lookup(paths...)
	if !ok {
		t := now()
		r.rep.add(field, "missing", t)
		return t
	}
	if v.Type == gjson.Number {
		// epoch millis from some endpoints
		return time.UnixMilli(v.Int())
	}
	if v.IsArray() {
		// [yyyy, m, d, h, min, s] as serialised by some backends
		parts := v.Array()
		if len(parts) >= 3 {
			at := func(i int) int {
				if i < len(parts) {
					return int(parts[i].Int())
				}
				return 0
			}
			return time.Date(at(0), time.Month(at(1)), at(2), at(3), at(4), at(5), 0, time.Local)
		}
	}
	t, ok := ParseTime(v.String())
	if !ok {
		t = now()
		r.rep.add(field, "unparseable date "+strconv.Quote(v.String()), t)
	}
	return t
}

// ParseTime tries the backend format, then the fallbacks, then dateparse.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseLocal(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

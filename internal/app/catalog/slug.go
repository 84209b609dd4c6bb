package catalog

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 80

// Slugify переводит s в нижний регистр, убирает диакритику и заменяет остальные символы
// одним дефисом. Остаются только ASCII буквы и цифры.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(plain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return truncate(b.String(), maxSlugLength)
}

// AssignID выводит id новой записи из name. taken сообщает, занят ли id;
// при коллизии добавляется -1, -2, ..., пустой slug заменяется временем создания.
func AssignID(name string, taken func(string) bool, now time.Time) string {
	base := Slugify(name)
	if base == "" {
		base = strconv.FormatInt(now.UnixMilli(), 10)
	}
	if !taken(base) {
		return base
	}
	for n := 1; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		id := truncate(base, maxSlugLength-len(suffix)) + suffix
		if !taken(id) {
			return id
		}
	}
}

// IDSet превращает список существующих id в callback taken для AssignID
func IDSet(ids []string) func(string) bool {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id string) bool {
		_, ok := set[id]
		return ok
	}
}

func truncate(slug string, n int) string {
	if len(slug) > n {
		slug = slug[:n]
	}
	return strings.TrimRight(slug, "-")
}

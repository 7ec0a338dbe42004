package form

import (
	"strings"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

type namespace struct {
	prefix string
	key    entity.ErrorKey
}

//nolint:gochecknoglobals // read-only routing table
var namespaces = []namespace{
	{prefix: "USER.CUR_PASSWORD.", key: entity.ErrorKeyUser},
	{prefix: "USER.PASSWORD.", key: entity.ErrorKeyPassword},
}

// Route splits server codes by namespace. A code goes to the error key of
// its longest matching prefix; codes without a match are general errors.
// Order is preserved and duplicates are dropped.
func Route(codes []pkgerrtext.Code) (map[entity.ErrorKey][]pkgerrtext.Code, []pkgerrtext.Code) {
	byKey := map[entity.ErrorKey][]pkgerrtext.Code{}
	var general []pkgerrtext.Code

	for _, code := range dedupe(codes) {
		key, ok := keyFor(code)
		if !ok {
			general = append(general, code)
			continue
		}
		byKey[key] = append(byKey[key], code)
	}

	return byKey, general
}

func keyFor(code pkgerrtext.Code) (entity.ErrorKey, bool) {
	best := -1
	var key entity.ErrorKey
	for _, ns := range namespaces {
		if strings.HasPrefix(string(code), ns.prefix) && len(ns.prefix) > best {
			best = len(ns.prefix)
			key = ns.key
		}
	}
	return key, best >= 0
}

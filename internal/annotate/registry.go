package annotate

import (
	"strconv"

	"github.com/tartampluch/go-almanac/internal/config"
)

var builtins = map[string]Resolver{
	config.ResolverLunarHoliday:   LunarHoliday,
	config.ResolverCivilHoliday:   CivilHoliday,
	config.ResolverTermOrLunarDay: TermOrLunarDay,
	config.ResolverWinterNine:     WinterNine,
	config.ResolverDogDays:        DogDays,
}

// ChainFromNames builds a chain in the order of names. Names are looked up in
// extra first, then among the built-ins. Unknown names fail fast.
func ChainFromNames(names []string, extra map[string]Resolver) (Chain, error) {
	chain := make(Chain, 0, len(names))
	for i, name := range names {
		r, ok := extra[name]
		if !ok {
			r, ok = builtins[name]
		}
		if !ok {
			return nil, config.Invalid("resolvers["+strconv.Itoa(i)+"]", name, config.ErrUnknownResolver)
		}
		chain = append(chain, r)
	}
	if err := chain.Validate(); err != nil {
		return nil, err
	}
	return chain, nil
}

// DefaultChain favors named holidays, then falls back to terms and lunar days.
func DefaultChain() Chain {
	return Chain{LunarHoliday, CivilHoliday, TermOrLunarDay}
}

// SeasonalChain favors the winter-nine and dog-days countdowns.
func SeasonalChain() Chain {
	return Chain{WinterNine, DogDays, TermOrLunarDay}
}

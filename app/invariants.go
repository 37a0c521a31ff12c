package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	pairkeeper "github.com/ysip-labs/ysip/x/pair/keeper"
)

// invariantRegistry collects invariant routes in registration order.
type invariantRegistry struct {
	routes []sdk.Invariant
	names  []string
}

func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invar)
	r.names = append(r.names, moduleName+"/"+route)
}

// AssertInvariants runs every registered invariant against ctx and returns
// the first broken one.
func (app *App) AssertInvariants(ctx sdk.Context) (string, bool) {
	ir := &invariantRegistry{}
	pairkeeper.RegisterInvariants(ir, app.PairKeeper, app.ContractKeeper)

	for i, invar := range ir.routes {
		msg, broken := invar(ctx)
		if broken {
			app.logger.Error("invariant broken", "route", ir.names[i], "details", msg)
			return msg, true
		}
	}
	return "", false
}

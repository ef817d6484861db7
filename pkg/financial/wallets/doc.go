// Package wallets provides typed facades for e-wallet instruments. Each
// wrapper embeds *financial.Request, so the generic Set, Get and Document
// methods stay available next to the named setters.
package wallets

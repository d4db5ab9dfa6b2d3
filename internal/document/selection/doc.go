// Package selection models user selections as immutable values.
//
// Three shapes exist: Null (no selection), Property (a rune range inside
// one text property) and Container (two coordinates spanning nodes of a
// container). Values do not have to be normalized; Range produces an
// ordered form, using a Resolver for container order when endpoints live
// on different nodes. Table selections are a shape documents recognize
// but this model does not implement, so the discriminator is present and
// always false.
package selection

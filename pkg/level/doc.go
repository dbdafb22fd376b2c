// Package level models level definition documents and the rules applied
// to them before they are written.
//
// A Document is an ordered list of Objects. Each object has a class tag
// (objclass), zero or more aliases other objects reference through RTIDs,
// and an opaque payload (objdata) that this package never interprets.
//
// # Serialization order
//
// The game reads objects in file order, so the order objects are kept in
// while editing is not the order they are written in. A Registry maps each
// class to a priority bucket; Normalize stable-sorts objects by bucket,
// keeping the editing order inside a bucket. Unknown classes land in
// DefaultPriority and therefore sort last.
//
// # References
//
// Resolver combines rtid parsing with the document's alias set and the
// static catalogs to decide whether a reference string points at
// something real. An unresolved reference is reported, never fixed.
package level

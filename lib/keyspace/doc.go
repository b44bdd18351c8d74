// Package keyspace implements the record-level API of the Lynx client:
// CRUD and bulk operations on a named keyspace of a store, plus long-lived
// change subscriptions over the server's secondary streaming listener.
//
// Every operation builds one store-operation record (or one raw command for
// keyspace lifecycle) and performs a single one-shot exchange through the
// wire core. Responses come back as raw frames; decode them with
// protocol.ParseResponse or protocol.ParseStreamMessage using the payload
// type the operation is expected to yield.
//
// Custom keys are hashed into the server key space (see lib/keys) before
// they go on the wire, so a record written under a custom key is retrievable
// under the same custom key from any client.
package keyspace

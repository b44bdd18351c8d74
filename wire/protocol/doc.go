// Package protocol implements the framing layer of the Lynx wire protocol:
// request envelopes and their JSON encoding, response envelopes, and the
// payload normalization applied before typed decoding.
//
// The wire format is line-delimited JSON: every request, response and stream
// chunk is exactly one JSON document followed by a single '\n' byte, which is
// the only frame delimiter of the protocol.
//
// Key Components:
//
//   - Request: closed union of RawRequest (ordered command tokens plus
//     credentials), StoreRequest (flat store-operation record) and
//     SubscribeRequest (stream subscription envelope).
//
//   - Response / StreamMessage: generic reply envelopes, decoded with
//     ParseResponse and ParseStreamMessage.
//
//   - Normalize: recursive un-escaping of payload values the server
//     double-encoded as JSON inside a JSON string.
package protocol

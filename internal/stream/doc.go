// Package stream broadcasts auction state transitions to WebSocket viewers.
//
// The hub is a one-way fan-out: the session publishes a snapshot after every
// committed mutation and every connected client receives it. Inbound actions
// go through the HTTP gateway, not the socket.
package stream

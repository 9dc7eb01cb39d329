// Package cli provides the interactive RapidBlood command-line client.
//
// It wires configuration, the record store and the services, then runs a
// REPL in which donors, recipients and the admin do what the web pages of a
// browser build would let them do: register, log in, search donors, send and
// answer blood requests, chat, and inspect or reset the data.
//
// A session saved by an earlier run is resumed on start. Errors from a
// command are printed and the loop carries on.
package cli

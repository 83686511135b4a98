// Package chat owns pairwise conversations and their messages.
//
// A conversation exists at most once per unordered pair of accounts;
// messages are immutable, server-timestamped, and retrieved in
// ascending sent_at order.
package chat

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the sole boundary between the poll feature and the
database, and the fan-out point for live snapshots.

# Operations

	st := store.New(conn)
	err := st.Create(ctx, state)                         // ErrCodeTaken on collision
	state, err := st.Read(ctx, code)                     // ErrNotFound when absent
	state, err := st.ApplyVote(ctx, code, token, labels) // atomic increments
	err = st.Update(ctx, code, state)                    // pre-vote edits only
	ch, cancel := st.Subscribe(code)

# Vote Tally Discipline

ApplyVote never read-modify-writes a tally. Each selected option is bumped
with an in-database increment and the running total is bumped by the
selection count, all in one transaction, so concurrent voters cannot
overwrite each other's increments and total_votes always equals the sum of
the option tallies. One vote is accepted per (code, voter token); the
primary key on poll_voter enforces it.

# Fan-out

Every committed write publishes the full resulting document to all
subscribers of that session code, including the writer's own subscription.
Slow consumers coalesce to the newest snapshot instead of blocking the
writer. Cancel is idempotent and closes the subscriber's channel.
*/
package store

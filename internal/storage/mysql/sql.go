package mysql

// The snapshot is relational here, but the Store contract is unchanged:
// Load reads everything, Save replaces everything in one transaction.
// Ordering is explicit via position columns so load order and the
// newest-first review order survive the round trip exactly.

const selectVenuesSQL = `
SELECT id, name, city, lat, lon
FROM venues
ORDER BY position
`

const selectReviewsSQL = `
SELECT venue_id, id, author, ` + "`text`" + `, bathrooms, food, parking, fields, photos, created_at
FROM reviews
ORDER BY venue_id, position
`

const deleteReviewsSQL = `DELETE FROM reviews`
const deleteVenuesSQL = `DELETE FROM venues`

const insertVenueSQL = `
INSERT INTO venues (id, name, city, lat, lon, position)
VALUES (?, ?, ?, ?, ?, ?)
`

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewSQL = `
INSERT INTO reviews
  (id, venue_id, position, author, ` + "`text`" + `, bathrooms, food, parking, fields, photos, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

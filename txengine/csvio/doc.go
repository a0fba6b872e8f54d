// Package csvio reads transaction records from CSV and writes balance
// snapshots back to CSV.
//
// Input columns are type,client,tx,amount. Surrounding whitespace is ignored,
// the type tag is case-insensitive and the amount column may be omitted on
// dispute, resolve and chargeback rows. Output columns are
// client,available,held,total,locked with four fractional digits.
package csvio

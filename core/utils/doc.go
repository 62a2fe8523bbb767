// Package utils provides lenient conversion helpers for loosely typed JSON.
//
// DNS nodes are independently upgraded and do not always agree on value types
// (booleans sent as "true", numbers as strings). These helpers read fastjson
// values without failing on such differences, so response adapters can stay
// strict about shape while tolerant about encoding.
package utils

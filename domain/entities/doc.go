// Package entities holds the value types shared by every layer of the codec
// host, starting with the structured error carried in wire responses.
package entities

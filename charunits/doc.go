// See charunits.go for the CharUnits type and bits.go for BitCount.
package charunits

// Package services contains domain services that operate on several
// aggregates at once.
//
// PricingEngine turns a quote request (addresses, floors, workers, walk
// distance, heavy items, selected pricing factors and packaging products)
// into an itemized Quote. It reads the catalog it is given and nothing else:
// the same input and catalog always produce the same Quote.
package services

// Package experiment implements the gRPC transport for the experiment service.
//
// Messages travel as google.protobuf.Struct values, so no generated code is
// needed: the service descriptor is declared by hand and the typed requests
// in this package are converted to and from Struct through their JSON form.
package experiment

// Package servicedef contains the JSON wire types of the QR Hub API.
//
// Values whose shape varies between QR code types or deployments, such as destination configs,
// prices, and chain IDs, are represented as ldvalue.Value.
package servicedef

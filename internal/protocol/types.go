// Package protocol defines the JSON envelope exchanged over text frames.
// Every frame is one object discriminated by its "type" field.
package protocol

const (
	TypeCreate  = "create"
	TypeJoin    = "join"
	TypeLeave   = "leave"
	TypeMessage = "message"
	TypeImage   = "image"

	TypeLocation  = "location"
	TypeGPS       = "gps"
	TypeLocations = "locations"

	TypeBinaryImage = "binary-image"
	TypeBinaryVideo = "binary-video"
	TypeBinaryAudio = "binary-audio"

	TypeOffer  = "offer"
	TypeAnswer = "answer"
	TypeICE    = "ice"

	TypePing = "ping"
	TypePong = "pong"

	TypeError      = "error"
	TypeInfo       = "info"
	TypeClientID   = "clientId"
	TypeNewClient  = "newClient"
	TypeClientLeft = "clientLeft"
)

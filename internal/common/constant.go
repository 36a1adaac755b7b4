package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound requests to the Streeek backend.
const AuthorizationHeaderName = "Authorization"

// InstallationIDKey is the metadata key under which the client stores its
// randomly generated installation identifier.
const InstallationIDKey = "installation_id"

package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ChangesChannel is the PostgreSQL NOTIFY channel the database triggers
// publish row changes to.
const ChangesChannel = "loopin_changes"

/*
Package outfitter initializes and manages a trailhead app with sane defaults.

# Outfitter

The main entrypoint to package outfitter is the [Outfitter] type.
An [Outfitter] ought to be constructed with [New],
passing in any [OutfitterOption] overriding the defaults.

[*Outfitter.Embark] begins a trailhead app's web server.
By default, [*Outfitter.Embark] listens on [DefaultHost]:[DefaultPort] (localhost:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the trailhead web server.

Upon calling [*Outfitter.Embark], all routes configured up to that point are now active.
Stop that web server with [*Outfitter.Shutdown]
or send a signal [*Outfitter.Embark] listens for.

# Configuration

A developer configures a trailhead app through environment variables
and by passing [OutfitterOption] values into [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can reach the team at; included in error responses when set
  - ENVIRONMENT: the environment the application is running in; cf. [trailhead.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: when truthy, serve every request with [MaintModeHandler]
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: the DSN for reporting errors to Sentry; cf. [logger.NewSentryLogger]
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package outfitter

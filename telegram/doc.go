// Package telegram sends notification messages through the Telegram Bot API.
//
// Every send issues exactly one HTTP GET against
// https://api.telegram.org/bot<TOKEN>/<METHOD> and hands back the status and
// body as received. Non-2xx answers are not errors; only a failed content
// kind lookup (ConfigurationError) or a transport failure (TransportError)
// is returned as an error. Nothing is retried or logged here.
//
// Free text (message body, caption) is URL encoded by this package. Bot
// tokens, chat IDs and content references (URLs or file_ids) are inserted
// verbatim and must already be URL safe.
package telegram

// Package cli implements the notify command-line tool.
//
// Each content kind has its own subcommand (text, photo, gif, video,
// document) that performs exactly one Bot API call and prints Telegram's
// status code and raw body. The bot token comes from --token, the
// TELEGRAM_BOT_TOKEN environment variable or the system keychain, in that
// order; "notify token set" saves it to the keychain.
package cli

// Package speech reads captions aloud.
//
// Narrator is the only type the display cycle talks to. It owns the single
// shared Engine: every Speak cancels the previous utterance first, so two
// narrations never overlap. Speak returns once the utterance is over, even
// when the engine fails or is missing, and it never returns an error.
//
// ExecEngine drives a local synthesiser binary (espeak-ng, espeak, say or
// spd-say). DetectEngine picks the first one found on PATH when the config
// asks for "auto".
package speech

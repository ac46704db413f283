// Package i18n provides the interface translations of cmdowser.
//
// The catalog is compiled into the binary: three locales (en, ru, uk),
// each mapping the same closed set of message keys to a template. A
// template may contain a single "{}" placeholder which is filled by the
// caller.
//
// # Usage
//
//	tr := i18n.NewTranslator(i18n.DetectLocale())
//	fmt.Println(tr.T(i18n.MsgLangSet, "ru"))
//
// A Translator is owned by one browsing session. Switching its locale
// affects every message rendered afterwards and nothing else.
package i18n

// Package cli provides the interactive Loopin terminal client.
//
// It wires configuration, the local session store, the API services and a
// REPL. On start it resumes a stored session when there is one, then runs
// a background connectivity watcher whose online/offline mode is shown in
// the prompt next to the signed-in identity.
//
// Commands:
//   - register, login, logout, whoami
//   - feed, show <id>, post, comment <id>, like <id>, retitle <id>, delete <id>
//   - notifications, read <id>
//   - watch <post-id> and inbox follow comments or notifications live until Enter
//   - attach <post-id> <file>, url <attachment-id>
//
// register drives an availability.Checker: every line typed while choosing a
// username is an edit, and the verdict is printed once the quiet period has
// passed.
package cli

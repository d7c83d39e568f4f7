// Package commands declares the automation commands served by actiond and
// the invoker ids they delegate to.
//
// The commands only validate and forward. Whatever performs the work must be
// registered under the matching invoker id before traffic starts.
package commands

import (
	"github.com/bjaus/action"
)

// Routing keys.
const (
	KeyAddFriend        = "addFriend"
	KeyGetLoginUserInfo = "getLoginUserInfo"
	KeySnsLikeCancel    = "snsLikeCancel"
	KeyUnlockScreen     = "UnlockScreen"
	KeyInitDelayHooks   = "initDelayHooks"
)

// Invoker ids.
const (
	AddFriendInvoker        action.InvokerID = "wechat.AddFriend"
	GetLoginUserInfoInvoker action.InvokerID = "wechat.GetLoginUserInfo"
	SnsLikeCancelInvoker    action.InvokerID = "wechat.SnsLikeCancel"
	InitDelayHooksInvoker   action.InvokerID = "wechat.InitDelayHooks"
	UnlockScreenInvoker     action.InvokerID = "shell.UnlockScreen"
)

// MsgNoSnsID is the failure message for snsLikeCancel without a post id.
const MsgNoSnsID = "Illegal argument exception: no sns id was found!"

// AddFriend sends a contact request. Arguments are passed through.
func AddFriend() *action.Command {
	return action.NewCommand(KeyAddFriend, AddFriendInvoker)
}

// GetLoginUserInfo reads the logged-in account's profile.
func GetLoginUserInfo() *action.Command {
	return action.NewCommand(KeyGetLoginUserInfo, GetLoginUserInfoInvoker)
}

// SnsLikeCancel withdraws a like from a moments post. The first argument is
// the post id and is required.
func SnsLikeCancel() *action.Command {
	return action.NewCommand(KeySnsLikeCancel, SnsLikeCancelInvoker,
		action.RequireArg(0, MsgNoSnsID),
	)
}

// UnlockScreen wakes and unlocks the device.
func UnlockScreen() *action.Command {
	return action.NewCommand(KeyUnlockScreen, UnlockScreenInvoker)
}

// InitDelayHooks installs the hooks that can only be placed once the client
// UI is up.
func InitDelayHooks() *action.Command {
	return action.NewCommand(KeyInitDelayHooks, InitDelayHooksInvoker)
}

// All returns every command.
func All() []*action.Command {
	return []*action.Command{
		AddFriend(),
		GetLoginUserInfo(),
		SnsLikeCancel(),
		UnlockScreen(),
		InitDelayHooks(),
	}
}

// Invokers returns the invoker id of every command, in the order of All.
func Invokers() []action.InvokerID {
	cmds := All()
	ids := make([]action.InvokerID, len(cmds))
	for i, c := range cmds {
		ids[i] = c.Invoker()
	}
	return ids
}

// Register adds every command to r.
func Register(r *action.Registry) error {
	for _, c := range All() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// cmd/console/storefront.go
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/domain/order"
	"github.com/your-org/coursemarket-client/internal/session"
)

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.auth.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", user.GetDisplayName())
			if a.session.ConsumePendingCheckout(cmd.Context()) {
				fmt.Println("You have a checkout waiting; run `coursemarket orders checkout` to finish it.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	req := &session.SignUpRequest{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a marketplace account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.auth.SignUp(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Account created for %s\n", user.GetDisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.auth.SignOut(cmd.Context())
		},
	}
}

func newCoursesCommand() *cobra.Command {
	var sortOrder string

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse the course catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.catalog.FetchCourses(cmd.Context()); err != nil {
				return err
			}

			courses := a.catalog.Courses()
			if sortOrder != "" {
				courses = a.catalog.SortByPrice(catalog.SortOrder(sortOrder))
			}
			for _, course := range courses {
				fmt.Printf("%6d  %-40s  %8.2f  %s\n",
					course.ID, course.Name, course.GetFormattedPrice(), course.Instructor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortOrder, "sort", "", "price-asc or price-desc")

	var reviewText string
	var reviewRating int
	reviewCmd := &cobra.Command{
		Use:   "review <course-id>",
		Short: "Submit a review for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			return a.catalog.AddComment(cmd.Context(), &catalog.AddCommentRequest{
				ProductID: id,
				Content:   reviewText,
				Rating:    reviewRating,
			})
		},
	}
	reviewCmd.Flags().StringVar(&reviewText, "text", "", "review text")
	reviewCmd.Flags().IntVar(&reviewRating, "rating", 0, "rating from 0 to 5")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <course-id>",
			Short: "Show a course and its reviews",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid course id %q", args[0])
				}
				course, err := a.catalog.FetchCourse(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Printf("%s by %s\n%.2f  rating %.1f (%d)\n%s\n",
					course.Name, course.Instructor, course.GetFormattedPrice(),
					course.Rating, course.RatingCount, course.Description)

				comments, err := a.catalog.FetchApprovedComments(cmd.Context(), id)
				if err != nil {
					return err
				}
				for _, comment := range comments {
					fmt.Printf("  %d/5  %s\n", comment.Rating, comment.Content)
				}
				return nil
			},
		},
		reviewCmd,
		&cobra.Command{
			Use:   "rate <course-id> <rating>",
			Short: "Rate a course without a review",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid course id %q", args[0])
				}
				rating, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid rating %q", args[1])
				}
				return a.catalog.AddRating(cmd.Context(), id, rating)
			},
		},
	)
	return cmd
}

func newCartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current cart",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				if err := a.cart.Load(cmd.Context()); err != nil {
					return err
				}
				current := a.cart.Cart()
				for _, item := range current.Items {
					fmt.Printf("%6d  %-40s  x%d  %8.2f\n",
						item.Product.ID, item.Product.Name, item.Quantity,
						float64(item.TotalPrice)/100)
				}
				fmt.Printf("Total: %.2f\n", float64(current.TotalAmount)/100)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <course-id>",
			Short: "Add a course to the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid course id %q", args[0])
				}
				return a.cart.AddItem(cmd.Context(), id, 1)
			},
		},
		&cobra.Command{
			Use:   "remove <course-id>",
			Short: "Remove a course from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid course id %q", args[0])
				}
				return a.cart.RemoveItem(cmd.Context(), id)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				return a.cart.Clear(cmd.Context())
			},
		},
	)
	return cmd
}

func newWishlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage your wishlist",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the wishlist",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				store, err := a.wishlistStore()
				if err != nil {
					return err
				}
				if err := store.Load(cmd.Context()); err != nil {
					return err
				}
				for _, item := range store.Items() {
					fmt.Printf("%6d  added %s\n", item.ProductID, item.AddedAt.Format("2006-01-02"))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <course-id>",
			Short: "Save a course to the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				store, err := a.wishlistStore()
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid course id %q", args[0])
				}
				return store.Add(cmd.Context(), id)
			},
		},
		&cobra.Command{
			Use:   "remove <course-id>",
			Short: "Drop a course from the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				store, err := a.wishlistStore()
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid course id %q", args[0])
				}
				return store.Remove(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func newOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View and manage your orders",
	}

	checkout := &order.CheckoutRequest{}
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Create an order from the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if !a.session.Authenticated() {
				if err := a.session.SetPendingCheckout(cmd.Context()); err != nil {
					return err
				}
				return fmt.Errorf("sign in to check out; your checkout will resume after login")
			}
			created, err := a.orders.Checkout(cmd.Context(), checkout)
			if err != nil {
				return err
			}
			fmt.Printf("Order %d placed, total %.2f\n", created.ID, created.GetFormattedTotal())
			return nil
		},
	}
	checkoutCmd.Flags().StringVar(&checkout.ShippingAddress.FirstName, "first-name", "", "recipient first name")
	checkoutCmd.Flags().StringVar(&checkout.ShippingAddress.LastName, "last-name", "", "recipient last name")
	checkoutCmd.Flags().StringVar(&checkout.ShippingAddress.AddressLine1, "address", "", "address line")
	checkoutCmd.Flags().StringVar(&checkout.ShippingAddress.City, "city", "", "city")
	checkoutCmd.Flags().StringVar(&checkout.ShippingAddress.PostalCode, "postal-code", "", "postal code")
	checkoutCmd.Flags().StringVar(&checkout.ShippingAddress.Country, "country", "", "country")

	cmd.AddCommand(
		checkoutCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List your orders",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				orders, err := a.orders.MyOrders(cmd.Context())
				if err != nil {
					return err
				}
				for _, o := range orders {
					display := order.Display(o.Status)
					fmt.Printf("%6d  %-12s  %8.2f  %s\n",
						o.ID, display.Label, o.GetFormattedTotal(),
						o.CreatedAt.Format("2006-01-02"))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "pay <order-id>",
			Short: "Complete payment for an order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid order id %q", args[0])
				}
				updated, err := a.orders.CompletePayment(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Printf("Order %d is now %s\n", updated.ID, order.Display(updated.Status).Label)
				return nil
			},
		},
		&cobra.Command{
			Use:   "invoice <order-id>",
			Short: "Download an order invoice PDF",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid order id %q", args[0])
				}
				blob, err := a.orders.Invoice(cmd.Context(), id)
				if err != nil {
					return err
				}
				name := fmt.Sprintf("invoice-%d.pdf", id)
				if err := os.WriteFile(name, blob, 0o644); err != nil {
					return fmt.Errorf("write invoice: %w", err)
				}
				fmt.Printf("Saved %s\n", name)
				return nil
			},
		},
	)
	return cmd
}
